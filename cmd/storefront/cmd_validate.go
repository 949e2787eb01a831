package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yashrajoria/storefront-client/notify"
	"github.com/yashrajoria/storefront-client/validation"
)

var validateCmd = &cobra.Command{
	Use:         "validate",
	Short:       "Check input against the storefront's client-side rules",
	Annotations: map[string]string{"offline": "true"},
}

var validateEmailCmd = &cobra.Command{
	Use:         "email ADDRESS",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return verdict(cmd, validation.IsValidEmail(args[0]))
	},
}

var validatePasswordCmd = &cobra.Command{
	Use:         "password PASSWORD",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return verdict(cmd, validation.IsValidPassword(args[0]))
	},
}

var validateFormsCmd = &cobra.Command{
	Use:         "forms FILE.html",
	Short:       `Validate forms marked data-validate="true" and print the marked-up page`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := validation.ParseDocument(f)
		if err != nil {
			return err
		}
		notifier := notify.NewWriterNotifier(cmd.ErrOrStderr())
		ok := true
		for _, form := range doc.Forms {
			if !validation.GuardSubmit(form, notifier) {
				ok = false
				for _, field := range form.Fields {
					if field.State == validation.Invalid {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", form.Name, field.Name)
					}
				}
			}
		}
		doc.Apply()
		if err := doc.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func verdict(cmd *cobra.Command, ok bool) error {
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "invalid")
		return fmt.Errorf("invalid")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

func init() {
	validateCmd.AddCommand(validateEmailCmd, validatePasswordCmd, validateFormsCmd)
}
