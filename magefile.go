// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//go:build mage

package main

import (
	"fmt"
	"os"
	fp "path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

//builds the backup and restore binaries into bin/
func Build() error {
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	ldflags := fmt.Sprintf("-X main.buildId=%s", buildInfo())
	for _, cmd := range []string{"backup", "restore"} {
		err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", fp.Join("bin", cmd), "./cmd/"+cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

//runs unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

//runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

//build, vet, test
func All() {
	mg.SerialDeps(Build, Vet, Test)
}

//BUILD_INFO is set on CI; fall back to git describe locally
func buildInfo() string {
	if bi := os.Getenv("BUILD_INFO"); bi != "" {
		return bi
	}
	out, err := sh.Output("git", "describe", "--always", "--dirty")
	if err != nil {
		return "dev"
	}
	return out
}
