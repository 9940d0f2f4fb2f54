package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"resume-forge/internal/model"
	"resume-forge/internal/usecase"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a snapshot against the schema and field rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd.OutOrStdout())
		},
	}
}

func runValidate(path string, w io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	doc, err := model.Decode(raw)
	if err != nil {
		return err
	}
	if err := usecase.DocumentValidator(doc); err != nil {
		var ve *usecase.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, ve.Fields[k])
		}
		return errors.Errorf("%s: %d invalid fields", path, len(keys))
	}

	fmt.Fprintf(w, "%s: valid, %.0f%% complete\n", path, model.Completion(doc))
	for _, item := range model.Checklist(doc) {
		fmt.Fprintf(w, "  %-22s %s\n", item.Section, item.Status)
	}
	return nil
}
