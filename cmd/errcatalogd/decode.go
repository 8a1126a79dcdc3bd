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
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/mapper"
)

// decodeResult is what decode prints for one record.
type decodeResult struct {
	Kind       string         `json:"kind"`
	HTTPStatus int            `json:"http_status"`
	GRPCCode   string         `json:"grpc_code"`
	Throwable  *dto.Throwable `json:"throwable"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Rebuild an error from its wire record",
	Long: `Read a JSON (or, with --xml, XML) error record from the file or stdin,
rebuild it through the registry and print the kind, the resolved statuses and
the record of the rebuilt error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asXML, _ := cmd.Flags().GetBool("xml")

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		res, err := a.decode(in, asXML)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool("xml", false, "the record is XML")
}

func (a *app) decode(r io.Reader, asXML bool) (*decodeResult, error) {
	var t *dto.Throwable
	if asXML {
		var err error
		if t, err = dto.DecodeXML(r); err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
	} else {
		t = new(dto.Throwable)
		if err := json.NewDecoder(r).Decode(t); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	err := a.reg.FromDTO(t)
	st := mapper.StatusOf(a.mapper, err)
	return &decodeResult{
		Kind:       string(errcatalog.KindOf(err)),
		HTTPStatus: st.HTTP,
		GRPCCode:   st.GRPC.String(),
		Throwable:  dto.FromError(err),
	}, nil
}
