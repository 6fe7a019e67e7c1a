package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/logger"
)

type compileFlags struct {
	remote  bool
	script  bool
	verbose bool
}

func newCompileCmd(flags *rootFlags) *cobra.Command {
	cf := &compileFlags{}
	cmd := &cobra.Command{
		Use:   "compile <form>",
		Short: "Print the client validation data of a form",
		Long: `Compile converts the rules of a form into the data consumed by the
browser validation engine and prints it as JSON, or as the page script with
--script. Remote rules are included unless --remote=false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := flags.registry()
			if err != nil {
				return err
			}
			form, err := reg.Form(args[0])
			if err != nil {
				return err
			}
			jsCfg, err := jsvalidation.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.Discard()
			if cf.verbose {
				log = logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(logger.FormatText), logger.WithLevelName("debug"))
			}
			factory := jsvalidation.NewFactory(jsCfg, jsvalidation.WithFactoryLogger(log))

			j, err := form.JavascriptValidator(factory)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("remote") {
				j.Remote(cf.remote)
			}

			if cf.script {
				return j.Render(cmd.Context(), cmd.OutOrStdout())
			}
			data, err := j.ViewData()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().BoolVar(&cf.remote, "remote", true, "include remote rules")
	cmd.Flags().BoolVar(&cf.script, "script", false, "print the page script instead of JSON")
	cmd.Flags().BoolVarP(&cf.verbose, "verbose", "v", false, "log skipped rules to stderr")
	return cmd
}
