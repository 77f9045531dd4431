package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dbracewell/mango/csv"
	"github.com/dbracewell/mango/resource"
	"github.com/dbracewell/mango/structured"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	From   string
	To     string
	Input  string
	Output string
}

// NewConvertCommand creates the convert command. CSV input must carry a
// header row; JSON input must be a document of the form produced by the
// csv-to-json direction: {"rows": [{...}, ...]}.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between csv and json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "csv", "input format (csv|json)")
	cmd.Flags().StringVar(&opts.To, "to", "json", "output format (csv|json)")
	cmd.Flags().StringVarP(&opts.Input, "in", "i", "", "input file")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "output file (default stdout)")
	cmd.MarkFlagRequired("in")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions) error {
	if opts.From == opts.To {
		return fmt.Errorf("nothing to convert: --from and --to are both %q", opts.From)
	}

	out := io.Writer(cmd.OutOrStdout())
	var closeOut func() error
	if opts.Output != "" {
		wc, err := resource.File(opts.Output).Create(cmd.Context())
		if err != nil {
			return err
		}
		out = wc
		closeOut = wc.Close
	}

	var err error
	switch {
	case opts.From == "csv" && opts.To == "json":
		err = csvToJSON(cmd, opts.Input, out)
	case opts.From == "json" && opts.To == "csv":
		err = jsonToCSV(cmd, opts.Input, out)
	default:
		err = fmt.Errorf("unsupported conversion %s to %s", opts.From, opts.To)
	}
	if closeOut != nil {
		if cerr := closeOut(); err == nil {
			err = cerr
		}
	}
	return err
}

func csvToJSON(cmd *cobra.Command, input string, out io.Writer) error {
	r, err := csv.New().HasHeader().ResourceReader(cmd.Context(), resource.File(input))
	if err != nil {
		return err
	}
	defer r.Close()
	header := r.Header()
	if len(header) == 0 {
		return fmt.Errorf("%s: no header row", input)
	}

	w := structured.NewJSONWriter(out)
	if err := w.BeginDocument(); err != nil {
		return err
	}
	if err := w.BeginArray("rows"); err != nil {
		return err
	}
	for {
		row, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if err := w.BeginObject(""); err != nil {
			return err
		}
		for i, name := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if err := w.KeyValue(name, cell); err != nil {
				return err
			}
		}
		if err := w.EndObject(); err != nil {
			return err
		}
	}
	if err := w.EndArray(); err != nil {
		return err
	}
	if err := w.EndDocument(); err != nil {
		return err
	}
	return w.Flush()
}

func jsonToCSV(cmd *cobra.Command, input string, out io.Writer) error {
	rc, err := resource.File(input).Open(cmd.Context())
	if err != nil {
		return err
	}
	defer rc.Close()

	r := structured.NewJSONReader(rc)
	if err := r.BeginDocument(); err != nil {
		return err
	}
	if _, err := r.BeginArray("rows"); err != nil {
		return err
	}

	var (
		header []string
		w      *csv.Writer
	)
	for {
		et, err := r.Peek()
		if err != nil {
			return err
		}
		if et == structured.EndArray {
			break
		}
		if _, err := r.BeginObject(""); err != nil {
			return err
		}
		rec := map[string]string{}
		var order []string
		for {
			et, err := r.Peek()
			if err != nil {
				return err
			}
			if et != structured.Value {
				break
			}
			k, v, err := r.NextKeyValue()
			if err != nil {
				return err
			}
			rec[k] = fmt.Sprint(v)
			order = append(order, k)
		}
		if err := r.EndObject(); err != nil {
			return err
		}
		if header == nil {
			header = order
			w = csv.New().Header(header...).Writer(out)
		}
		row := make([]string, len(header))
		for i, name := range header {
			row[i] = rec[name]
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if err := r.EndArray(); err != nil {
		return err
	}
	if err := r.EndDocument(); err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%s: no rows", input)
	}
	return w.Flush()
}
