package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/valuegen/internal/action/plan"
)

func init() {
	rootCmd.AddCommand(NewDescribeCommand())
}

type describedProperty struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Type     string `yaml:"type"`
	Getter   string `yaml:"getter"`
	Singular string `yaml:"singular,omitempty"`
	Default  string `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

type describedType struct {
	Type       string              `yaml:"type"`
	Output     string              `yaml:"output"`
	Builder    string              `yaml:"builder"`
	Features   []string            `yaml:"features"`
	Properties []describedProperty `yaml:"properties"`
}

func NewDescribeCommand() *cobra.Command {
	// describeCmd represents the valuegen describe command
	var describeCmd = &cobra.Command{
		Use:   "describe [descriptor...]",
		Short: "print the compiled model of descriptors",
		Long:  "Compile the given descriptors and print the types, properties and features generation would use, without generating anything",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			units, err := plan.Load(c.Context(), opts)
			if err != nil {
				return err
			}

			out := make([]describedType, 0, len(units))
			for _, u := range units {
				dt := u.Datatype
				d := describedType{Type: dt.Type.String(), Output: u.Output, Builder: dt.Builder.Name, Features: []string{}}
				for _, n := range u.Env.Names() {
					d.Features = append(d.Features, string(n))
				}
				for _, p := range dt.Properties {
					dp := describedProperty{
						Name:     p.Name,
						Kind:     p.Kind.String(),
						Type:     p.Type.String(),
						Getter:   p.GetterName,
						Default:  p.Default.String(),
						Required: p.IsRequired(),
					}
					if p.SingularName != p.Name {
						dp.Singular = p.SingularName
					}
					d.Properties = append(d.Properties, dp)
				}
				out = append(out, d)
			}

			enc := yaml.NewEncoder(c.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(out); err != nil {
				return errors.Wrap(err, "encode model")
			}
			return enc.Close()
		},
	}
	optionFlags(describeCmd)

	return describeCmd
}
