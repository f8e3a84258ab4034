package exercise

import "fmt"

// Mode decides how the toolchain grades an exercise.
type Mode int

const (
	// ModeCompile compiles the exercise and runs it.
	ModeCompile Mode = iota
	// ModeTest compiles the exercise and runs its tests.
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeCompile:
		return "compile"
	case ModeTest:
		return "test"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a manifest mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compile":
		return ModeCompile, nil
	case "test":
		return ModeTest, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want \"compile\" or \"test\")", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeCompile, ModeTest:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}
