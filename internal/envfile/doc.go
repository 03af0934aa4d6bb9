// Package envfile reads environment variables from files named with
// --env-file.
//
// The format is picked from the file extension:
//   - .yaml, .yml: a top-level mapping of names to scalar values,
//     parsed with gopkg.in/yaml.v3. Document order is preserved.
//   - .json, .jsonc: a top-level object, with comments and trailing
//     commas stripped by github.com/tidwall/jsonc. Keys are sorted.
//   - anything else: dotenv syntax, parsed with github.com/joho/godotenv.
//     Keys are sorted.
//
// Files are read through an afero.Fs so tests can use an in-memory
// filesystem.
package envfile
