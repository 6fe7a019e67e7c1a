package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jsvalidation/pkg/config"
	"github.com/dmitrymomot/jsvalidation/pkg/formspec"
)

type rootFlags struct {
	envFile   string
	formsFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "jsvalidate",
		Short:         "Compile form validation rules for the browser",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.envFile == "" {
				return nil
			}
			return config.LoadEnv(flags.envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "load environment variables from this file")
	cmd.PersistentFlags().StringVar(&flags.formsFile, "forms", "", "form definitions file (default $FORMS_FILE or forms.yaml)")

	cmd.AddCommand(
		newCompileCmd(flags),
		newFormsCmd(flags),
		newServeCmd(flags),
	)
	return cmd
}

// appConfig reads the environment; the --forms flag wins over FORMS_FILE.
func (f *rootFlags) appConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Parse(&cfg); err != nil {
		return appConfig{}, err
	}
	if f.formsFile != "" {
		cfg.FormsFile = f.formsFile
	}
	return cfg, nil
}

func (f *rootFlags) registry() (*formspec.Registry, appConfig, error) {
	cfg, err := f.appConfig()
	if err != nil {
		return nil, appConfig{}, err
	}
	reg, err := formspec.Load(cfg.FormsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, appConfig{}, errors.Join(errors.New("no form definitions, pass --forms or set FORMS_FILE"), err)
	}
	return reg, cfg, err
}
