package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/pipeline"
)

// loadConfig decodes the TOML file at path over opts. Keys absent from the
// file keep their current values; unknown keys are rejected.
//
// Example:
//
//	width = 600
//	node_color = "steelblue"
//	formats = ["svg", "html"]
//
//	[label_colors]
//	0 = "#ff0000"
func loadConfig(path string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidInput, "%s: unknown config keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyConfig loads the config file into opts, whose fields back cmd's
// flags, then restores every flag the user set explicitly so the command
// line wins over the file.
func applyConfig(cmd *cobra.Command, path string, opts *pipeline.Options) error {
	set := make(map[string]string)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		set[f.Name] = f.Value.String()
	})

	if err := loadConfig(path, opts); err != nil {
		return err
	}

	for name, value := range set {
		if err := cmd.Flags().Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
