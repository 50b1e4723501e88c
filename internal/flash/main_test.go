// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flash

import (
	"io"
	"log"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Hardware warnings are expected in failure tests.
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}
