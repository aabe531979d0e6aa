// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tuhiproject/tuhi-sub000/catalog"
)

// deviceConfig is the small on-disk record a caller keeps per paired
// device: the identifier chosen during registration and the generation
// latched the last time Register ran, so a later Fetch doesn't have to
// guess at ANY and pay for the slower REGISTER_WAIT_FOR_BUTTON gating.
type deviceConfig struct {
	Identifier string `yaml:"identifier"`
	Generation string `yaml:"generation"`
}

func loadDeviceConfig(path string) (deviceConfig, error) {
	var cfg deviceConfig

	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func parseGeneration(s string) (catalog.ProtocolVersion, error) {
	switch s {
	case "", "any":
		return catalog.ANY, nil
	case "gen1":
		return catalog.GEN1, nil
	case "gen2":
		return catalog.GEN2, nil
	case "gen3":
		return catalog.GEN3, nil
	default:
		return catalog.ANY, fmt.Errorf("unrecognized generation %q, want one of: any, gen1, gen2, gen3", s)
	}
}
