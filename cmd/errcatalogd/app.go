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
	"fmt"

	"github.com/sirupsen/logrus"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/config"
	"dirpx.dev/errcatalog/internal/logging"
	"dirpx.dev/errcatalog/mapper"
	"dirpx.dev/errcatalog/registry"
)

// app holds the wired components every command works on.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	reg    *registry.Registry
	mapper apis.Mapper
}

func loadApp() (*app, error) {
	cfg, err := config.Load(loadOptions())
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

// newApp builds the registry from the catalog plus the configured kinds and
// a mapper seeded from that registry with the configured exceptions on top.
func newApp(cfg *config.Config) (*app, error) {
	l := logrus.New()
	if err := logging.Init(l, cfg.Log); err != nil {
		return nil, err
	}

	reg, err := registry.NewDefault(registry.WithLogger(l))
	if err != nil {
		return nil, err
	}
	if err := cfg.RegisterKinds(reg); err != nil {
		return nil, err
	}

	opts, err := cfg.MapperOptions()
	if err != nil {
		return nil, err
	}
	m, err := mapper.New(append([]mapper.Option{mapper.WithRegistry(reg)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("build mapper: %w", err)
	}

	l.WithFields(logrus.Fields{
		"env":   config.Env(),
		"kinds": len(reg.Descriptions()),
	}).Debug("error catalog loaded")
	return &app{cfg: cfg, log: l, reg: reg, mapper: m}, nil
}

// descriptors lists every registered kind with the statuses it resolves to.
func (a *app) descriptors() []apis.ErrorDescriptor {
	ds := a.reg.Descriptions()
	out := make([]apis.ErrorDescriptor, 0, len(ds))
	for _, d := range ds {
		out = append(out, a.descriptor(d))
	}
	return out
}

func (a *app) descriptor(d registry.Description) apis.ErrorDescriptor {
	v := d.Descriptor()
	st := a.mapper.Status(d.Kind)
	if v.HTTPStatus == 0 {
		v.HTTPStatus = st.HTTP
	}
	v.GRPCCode = int(st.GRPC)
	return v
}
