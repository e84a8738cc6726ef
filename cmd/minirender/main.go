// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command minirender renders the demo scene with the software
// graphics backend and writes the frames as image files.
package main

import (
	"os"

	"cogentcore.org/minirender/base/logx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vv, v, q bool
	root := &cobra.Command{
		Use:           "minirender",
		Short:         "Render the torus demo scene to image files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(vv, v, q)
			logx.SetDefaultLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&vv, "vv", false, "show debug messages")
	pf.BoolVarP(&v, "verbose", "v", false, "show info messages")
	pf.BoolVarP(&q, "quiet", "q", false, "only show errors")
	root.AddCommand(newRenderCmd(), newWatchCmd())
	return root
}
