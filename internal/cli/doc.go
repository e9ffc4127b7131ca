// Package cli implements the pgcet command line interface.
//
//	pgcet analyze [--output text|json] [--export DIR] FILE...
//	pgcet serve [--host HOST] [--port PORT]
//	pgcet version [--json]
//
// Commands share configuration loaded from the environment (after an
// optional .env file) and a JSON logger writing to stderr.
package cli
