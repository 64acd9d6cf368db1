// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import "sync"

// lzssDictPool lets repeated Encode calls reuse a dictionary's backing
// struct instead of allocating a fresh one every call.
var lzssDictPool = sync.Pool{
	New: func() any {
		return &lzssDict{}
	},
}

func acquireLzssDict(src []byte, settings LzssSettings) *lzssDict {
	d := lzssDictPool.Get().(*lzssDict)
	d.reset(src, settings)
	return d
}

func releaseLzssDict(d *lzssDict) {
	if d == nil {
		return
	}
	d.src = nil
	lzssDictPool.Put(d)
}
