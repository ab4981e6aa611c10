package config

import "flag"

// command line switches for the server binary
type Flags struct {
	// apply schema.sql (tables and match functions) before serving
	Migrate bool
}

// parses CLI flags for the server; args excludes the program name
func ParseServerFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	migrate := fs.Bool("migrate", false, "apply the database schema and match functions before serving")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{Migrate: *migrate}, nil
}
