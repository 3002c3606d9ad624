// Package config loads dodist's configuration.
//
// Values are layered, each source overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: --config, or the first of .dodist.toml, dodist.toml,
//     dodist.yaml, dodist.yml found in the working directory
//  3. a .env file in the working directory (never overriding the environment)
//  4. DODIST_ environment variables, with "__" between section and key,
//     e.g. DODIST_BUILD__OUTPUT=public
//  5. explicit overrides, normally the command-line flags that were set
package config
