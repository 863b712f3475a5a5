package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-humble/pc-builder/internal/model"
)

// readRecord takes the record from the inline argument, from --file, or
// from stdin when either of them is "-".
func readRecord(cmd *cobra.Command, args []string, file string) (model.Record, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case file == "-" || (len(args) > 0 && args[0] == "-"):
		data, err = io.ReadAll(cmd.InOrStdin())
	case file != "":
		data, err = os.ReadFile(file)
	case len(args) > 0:
		data = []byte(args[0])
	default:
		return nil, fmt.Errorf("no component record given")
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("record must be a JSON object: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("record must be a JSON object, got null")
	}

	return rec, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
