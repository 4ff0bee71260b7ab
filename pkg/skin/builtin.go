package skin

import oerrors "github.com/oasis-os/oasis/pkg/errors"

// builtins holds the in-memory manifests the engine falls back to
// when a name isn't found under any configured skin directory or in
// the VFS's /skins tree (spec §4.2 "Loads a skin from either a
// built-in in-memory manifest or a directory of TOML files").
//
// classic and modern are the two names spec §8 scenario B exercises
// directly ("boot with skin classic; execute skin modern; theme get
// primary returns the purple documented for modern").
var builtins = map[string]string{
	"classic": classicSkinToml,
	"modern":  modernSkinToml,
}

const classicSkinToml = `
[manifest]
name = "classic"
version = "1.0.0"
author = "oasis"
description = "default boot skin: dark status bar, blue accent"
screen_width = 480
screen_height = 272

[layout.statusbar]
x = 0
y = 0
w = 480
h = 20
fill = "#202020"
z = 100
visible = true

[layout.boot_panel]
x = 0
y = 20
w = 480
h = 252
fill = "#101010"
z = 0
visible = true

[features]
dashboard = true
terminal = true
window_manager = true
grid_cols = 4
grid_rows = 2

[theme]
background = "#101010"
primary = "#3a7bd5"
secondary = "#6c6c6c"
text = "#f0f0f0"
dim_text = "#888888"
status_bar = "#202020"
prompt = "#3a7bd5"
output = "#f0f0f0"
error = "#ff4444"

[strings]
boot_text = ["OASIS", "classic shell ready"]
prompt_format = "$USER@oasis:$CWD$ "
`

const modernSkinToml = `
[manifest]
name = "modern"
version = "1.0.0"
author = "oasis"
description = "flat skin with a purple accent and rounded surfaces"
screen_width = 480
screen_height = 272

[layout.statusbar]
x = 0
y = 0
w = 480
h = 20
fill = "#2b1f3d"
z = 100
visible = true

[layout.boot_panel]
x = 0
y = 20
w = 480
h = 252
fill = "#1a1426"
z = 0
visible = true

[features]
dashboard = true
terminal = true
window_manager = true
grid_cols = 5
grid_rows = 2

[theme]
background = "#1a1426"
primary = "#8a4fff"
secondary = "#4b4560"
text = "#f5f0ff"
dim_text = "#9a90b0"
status_bar = "#2b1f3d"
prompt = "#8a4fff"
output = "#f5f0ff"
error = "#ff6b6b"
surface = "#241b36"
accent_hover = "#a06bff"
border_radius = 8
gradient_enabled = true

[strings]
boot_text = ["OASIS", "modern shell ready"]
prompt_format = "$USER@oasis:$CWD$ "
`

// LoadBuiltin constructs a Skin from one of the names registered in
// builtins, returning KindNotFound if name isn't a built-in.
func LoadBuiltin(name string) (*Skin, error) {
	raw, ok := builtins[name]
	if !ok {
		return nil, oerrors.New(oerrors.KindNotFound, "no built-in skin with this name").WithInput(name)
	}
	return LoadFromBytes([]byte(raw))
}

// BuiltinNames lists the in-memory skin names in deterministic order.
func BuiltinNames() []string {
	return []string{"classic", "modern"}
}
