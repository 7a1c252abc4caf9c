// Package output renders a resolved codecrusher.Config.
//
// Three formats are supported:
//
//   - text: a header line followed by one "  key: value" line per field
//   - json: an indented JSON object
//   - yaml: a YAML mapping
//
// Only fields that are set are written, always in the canonical order
// provider, model, max_retries, timeout, use_cache, prompt, tags, so the same
// configuration always renders to the same bytes.
//
//	formatter, err := output.NewFormatter(output.FormatText, quiet)
//	if err != nil {
//	    return err
//	}
//	formatter.FormatConfig(os.Stdout, cfg)
package output
