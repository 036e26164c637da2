package cmd

import (
	"io"
	"strings"

	"github.com/LumeraProtocol/docanchor/pkg/errors"
	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeOutput renders v in the selected output format followed by a newline.
func writeOutput(w io.Writer, format string, v interface{}) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON, "":
		out, err = json.Marshal(v)
		if err == nil {
			out = append(out, '\n')
		}
	case formatYAML, "yml":
		out, err = yaml.Marshal(v)
	default:
		return errors.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = w.Write(out)
	return err
}
