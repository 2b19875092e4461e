package options

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML preset file into a fresh Default() tree, so fields the
// file omits keep their defaults (spec.md §8 "partial TOML fills
// defaults").
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("options: read %s: %w", path, err)
	}
	opts := Default()
	if err := toml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("options: parse %s: %w", path, err)
	}
	opts.Keybindings.RebuildReverseMap()
	return &opts, nil
}

// Save writes opts to path as TOML, creating parent directories as needed.
func Save(path string, opts *Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("options: mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := toml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("options: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("options: write %s: %w", path, err)
	}
	return nil
}

// ListPresets returns the base names (without the .toml extension) of every
// preset file in dir, sorted alphabetically.
func ListPresets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("options: list presets %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Watcher reloads the active preset whenever its file changes on disk, so
// a preset edited externally (or rewritten by Save from elsewhere) takes
// effect without a restart.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	onReload  func(*Options)
}

// WatchPreset starts watching path and invokes onReload with the freshly
// parsed Options each time the file is written. Call Close to stop.
func WatchPreset(path string, onReload func(*Options)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("options: new watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("options: watch %s: %w", path, err)
	}

	w := &Watcher{fsWatcher: fw, onReload: onReload}
	go w.loop(path)
	return w, nil
}

func (w *Watcher) loop(path string) {
	target := filepath.Clean(path)
	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			opts, err := Load(path)
			if err != nil {
				continue
			}
			w.onReload(opts)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// SetViewOption applies value to the field addressed by a dotted key such
// as "lighting.shininess" or "display.show_waters" (spec.md §6). Key
// segments match struct `toml` tags, not Go field names. Returns false if
// the key does not resolve to a settable field or value cannot be
// assigned to it.
func SetViewOption(opts *Options, key string, value any) bool {
	segments := strings.Split(key, ".")
	v := reflect.ValueOf(opts).Elem()
	for i, seg := range segments {
		v = fieldByTomlTag(v, seg)
		if !v.IsValid() {
			return false
		}
		if i < len(segments)-1 {
			if v.Kind() != reflect.Struct {
				return false
			}
		}
	}
	return assignValue(v, value)
}

func fieldByTomlTag(v reflect.Value, tag string) reflect.Value {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("toml")
		if idx := strings.Index(name, ","); idx >= 0 {
			name = name[:idx]
		}
		if name == tag {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func assignValue(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}
	rv := reflect.ValueOf(value)

	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(value)
		if !ok {
			return false
		}
		field.SetFloat(f)
		return true
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return false
		}
		field.SetBool(b)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := toFloat64(value)
		if !ok {
			return false
		}
		field.SetUint(uint64(f))
		return true
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return false
		}
		field.SetString(s)
		return true
	case reflect.Array:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		if rv.Len() != field.Len() {
			return false
		}
		for i := 0; i < field.Len(); i++ {
			elem := rv.Index(i)
			if elem.Kind() == reflect.Interface {
				elem = elem.Elem()
			}
			f, ok := toFloat64(elem.Interface())
			if !ok {
				return false
			}
			field.Index(i).SetFloat(f)
		}
		return true
	}
	return false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
