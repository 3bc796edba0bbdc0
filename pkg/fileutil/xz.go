// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package fileutil

import (
	"fmt"
	"io"
	"os"
	fp "path/filepath"

	"github.com/ulikunitz/xz"
)

//XZCompress compresses path into path.xz and removes the original. Returns
//the new path. On error the original file is left in place.
func XZCompress(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()
	outPath := path + ".xz"
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	xw, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return "", err
	}
	_, err = io.Copy(xw, in)
	if err == nil {
		err = xw.Close()
	} else {
		xw.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}
	in.Close()
	if err := os.Remove(path); err != nil {
		return outPath, fmt.Errorf("compressed to %s but cannot remove %s: %w", outPath, path, err)
	}
	return outPath, nil
}

//XZDecompressTemp decompresses an xz file to a temp file in the same dir,
//returning the temp path. The caller removes the temp file when done.
func XZDecompressTemp(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()
	xr, err := xz.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	base := fp.Base(path)
	tmp, err := os.CreateTemp(fp.Dir(path), "."+base+".*")
	if err != nil {
		return "", err
	}
	_, err = io.Copy(tmp, xr)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("decompressing %s: %w", path, err)
	}
	return tmp.Name(), nil
}
