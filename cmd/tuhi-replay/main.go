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

// tuhi-replay registers against, and fetches pending drawings from, a
// device behind a tuhi.Transport. In this binary that Transport is a
// tuhitesting.FakeTransport loaded with a canned exchange, standing in
// for a real BLE adapter; a caller with one wires it through the same
// interface.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jacobsa/timeutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tuhi "github.com/tuhiproject/tuhi-sub000"
	"github.com/tuhiproject/tuhi-sub000/session"
	"github.com/tuhiproject/tuhi-sub000/tuhitesting"
)

var (
	fConfigPath string
	fDebug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "tuhi-replay",
		Short: "Register and fetch pending drawings from a paired smartpad",
		RunE:  run,
	}

	root.Flags().StringVar(&fConfigPath, "config", "", "path to a device-identity YAML file (required)")
	root.Flags().BoolVar(&fDebug, "debug", false, "enable verbose structured logging")
	root.MarkFlagRequired("config")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(fDebug)
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := loadDeviceConfig(fConfigPath)
	if err != nil {
		return err
	}

	id, err := tuhi.ParseIdentifier(cfg.Identifier)
	if err != nil {
		return err
	}

	gen, err := parseGeneration(cfg.Generation)
	if err != nil {
		return err
	}

	ft := &tuhitesting.FakeTransport{Script: buildDemoScript()}
	engine := tuhi.NewEngine(ft.Transport(), logger)
	clock := &timeutil.SimulatedClock{}
	clock.SetTime(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC))

	s := session.New(engine, clock, logger, id, gen)

	ctx := context.Background()

	if err := s.Register(ctx); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	logger.Info("registered", zap.String("identifier", id.String()), zap.Stringer("generation", s.Generation()))

	drawings, err := s.Fetch(ctx, tuhitesting.FixedPenData(demoPenData))
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	out, err := json.MarshalIndent(drawings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding drawings: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
