package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyField     = "field"
	KeyPath      = "path"
	KeyRepo      = "repository"
	KeyOwner     = "owner"
	KeyName      = "name"
	KeyConfigDir = "config_dir"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Field(name string) slog.Attr    { return slog.String(KeyField, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Repository(r string) slog.Attr  { return slog.String(KeyRepo, r) }
func Owner(o string) slog.Attr       { return slog.String(KeyOwner, o) }
func Name(n string) slog.Attr        { return slog.String(KeyName, n) }
func ConfigDir(dir string) slog.Attr { return slog.String(KeyConfigDir, dir) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
