// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// gqlrender prints a GraphQL request document described in YAML.
//
// Usage:
//
//	gqlrender [flags] FILE
//
// The document is printed in the output mode selected by --mode (pretty,
// compact, or encoded). With --params, the request parameters are printed as
// sorted key=value lines instead. Flags may also be set with GQLRENDER_MODE,
// GQLRENDER_PARAMS, GQLRENDER_COLLECT, GQLRENDER_CHECK, GQLRENDER_VALIDATE, and
// GQLRENDER_VERBOSE.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/graphql"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	mode     graphql.Mode
	params   bool
	collect  bool
	check    bool
	validate bool
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "gqlrender [flags] FILE",
		Short:        "gqlrender prints a GraphQL document described in YAML",
		Example:      "gqlrender --mode encoded products.yaml",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := graphql.ParseMode(v.GetString("mode"))
			if err != nil {
				return err
			}
			logger, err := newLogger(v.GetBool("verbose"))
			if err != nil {
				return err
			}
			defer logger.Sync() // nolint
			opts := &options{
				mode:     mode,
				params:   v.GetBool("params"),
				collect:  v.GetBool("collect"),
				check:    v.GetBool("check"),
				validate: v.GetBool("validate"),
			}
			return run(cmd.OutOrStdout(), logger, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.String("mode", graphql.Pretty.String(), "output mode: pretty, compact, or encoded")
	flags.Bool("params", false, "print the request parameters as key=value lines")
	flags.Bool("collect", false, "register only the fragments spread by the operation")
	flags.Bool("check", false, "parse the rendered query and fail on syntax errors")
	flags.Bool("validate", false, "fail on undefined or unused variables and fragments")
	flags.BoolP("verbose", "v", false, "log progress to stderr")
	v.SetEnvPrefix("GQLRENDER")
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(w io.Writer, logger *zap.Logger, path string, opts *options) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := parseDocument(data, opts.collect)
	if err != nil {
		return xerrors.Errorf("%s: %w", path, err)
	}
	logger.Debug("parsed document",
		zap.String("file", path),
		zap.String("operation", doc.Operation().Name()),
		zap.Bool("mutation", doc.Operation().IsMutation()),
		zap.Int("variables", len(doc.Operation().VariableDefinitions())),
		zap.Int("fragments", len(doc.Fragments())),
	)

	if opts.check {
		query := doc.Parameterize(graphql.Compact)[graphql.QueryParam]
		if _, err := parser.ParseQuery(&ast.Source{Name: path, Input: query}); err != nil {
			return xerrors.Errorf("check %s: %w", path, err)
		}
		logger.Debug("query is valid GraphQL", zap.String("file", path))
	}

	if opts.validate {
		errs := doc.Validate()
		for _, err := range errs {
			logger.Warn("invalid document", zap.String("file", path), zap.Error(err))
		}
		switch len(errs) {
		case 0:
		case 1:
			return xerrors.Errorf("validate %s: %w", path, errs[0])
		default:
			return xerrors.Errorf("validate %s: %d problems: %w", path, len(errs), errs[0])
		}
	}

	logger.Debug("rendering", zap.Stringer("mode", opts.mode), zap.Bool("params", opts.params))
	if !opts.params {
		_, err := fmt.Fprintln(w, doc.Stringify(opts.mode))
		return err
	}
	params := doc.Parameterize(opts.mode)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, params[k]); err != nil {
			return err
		}
	}
	return nil
}
