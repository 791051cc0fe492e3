package store

import "fmt"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// CurrentID returns the working calendar identifier used to name exports.
func (s *Store) CurrentID() (string, error) {
	return s.GetSetting("current_id")
}

func (s *Store) SetCurrentID(id string) error {
	return s.SetSetting("current_id", id)
}

// LoadDefaultStyle reads the persisted process-wide default style used for
// future new labels.
func (s *Store) LoadDefaultStyle() (Style, error) {
	var st Style
	pairs := []struct {
		key string
		dst *string
	}{
		{"style_color", &st.Color},
		{"style_background", &st.BackgroundColor},
		{"style_font_size", &st.FontSize},
		{"style_font_weight", &st.FontWeight},
		{"style_font_style", &st.FontStyle},
	}
	for _, p := range pairs {
		v, err := s.GetSetting(p.key)
		if err != nil {
			return DefaultStyle(), err
		}
		*p.dst = v
	}
	return st.Normalized(), nil
}

func (s *Store) SaveDefaultStyle(st Style) error {
	st = st.Normalized()
	pairs := map[string]string{
		"style_color":       st.Color,
		"style_background":  st.BackgroundColor,
		"style_font_size":   st.FontSize,
		"style_font_weight": st.FontWeight,
		"style_font_style":  st.FontStyle,
	}
	for k, v := range pairs {
		if err := s.SetSetting(k, v); err != nil {
			return err
		}
	}
	return nil
}
