package leveling

type Config struct {
	// XPPerLevel is the fixed size of every level band.
	XPPerLevel int64

	// XPPerCheckin is awarded for each completed daily check-in.
	XPPerCheckin int64
}

func NewDefaultConfig() *Config {
	return &Config{
		XPPerLevel:   50,
		XPPerCheckin: 10,
	}
}
