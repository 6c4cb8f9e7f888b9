package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	input  string
	output string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithPaths sets the conversion input and output paths. Input may be a
// single v3 JSON file or a directory of them; output mirrors its shape.
func WithPaths(input, output string) Option {
	return func(a *application) {
		a.input = input
		a.output = output
	}
}
