package terminal

import "github.com/oasis-os/oasis/pkg/vfs"

// Category is the closed set a Command declares membership in (spec
// §3, §4.4). A skin's features.command_categories list is parsed, but
// dispatch does not consult it.
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategorySystem     Category = "system"
	CategoryNetwork    Category = "network"
	CategoryAudio      Category = "audio"
	CategoryText       Category = "text"
	CategoryBrowser    Category = "browser"
	CategoryScripting  Category = "scripting"
	CategoryDeveloper  Category = "developer"
	CategoryUI         Category = "ui"
	CategoryAgent      Category = "agent"
	CategoryTransfer   Category = "transfer"
	CategoryConfig     Category = "config"
	CategoryFun        Category = "fun"
	CategorySecurity   Category = "security"
)

// InvocationContext is everything a Command's Run function needs: its
// arguments, the shared environment, a VFS handle, and piped stdin.
type InvocationContext struct {
	Args  []string
	Env   *Environment
	Vfs   vfs.Vfs
	Stdin string
}

// Command is a registry entry: a name (case-folded to lowercase at
// registration), category, docs, and an invocation contract (spec §3).
type Command struct {
	Name        string
	Category    Category
	Description string
	Usage       string
	Run         func(ctx *InvocationContext) CommandOutput
}
