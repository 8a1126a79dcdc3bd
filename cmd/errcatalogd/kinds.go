/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"

	"dirpx.dev/errcatalog/apis"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered error kinds",
	Long: `List the registered error kinds with their custom codes and the HTTP
and gRPC statuses they resolve to.

Example:
  errcatalogd kinds
  errcatalogd kinds -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printKinds(cmd.OutOrStdout(), output, a.descriptors())
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
	kindsCmd.Flags().StringP("output", "o", "text", "Output format (text, json or yaml)")
}

func printKinds(w io.Writer, output string, ds []apis.ErrorDescriptor) error {
	switch strings.ToLower(output) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tPARENT\tCODE\tHTTP\tGRPC")
		for _, d := range ds {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", d.Kind, dash(d.Parent), code(d.CustomCode), d.HTTPStatus, codes.Code(d.GRPCCode))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func code(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
