package main

import (
	"testing"
)

func TestCatCommand(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantErr     bool
		wantContain []string
		wantJSON    bool
	}{
		{
			name:        "prints file content",
			path:        "/docs/readme",
			wantContain: []string{"hello shark\n"},
		},
		{
			name:        "json output",
			path:        "/docs/readme",
			wantJSON:    true,
			wantContain: []string{`"content": "hello shark\n"`, `"size": 12`},
		},
		{
			name:    "missing file",
			path:    "/docs/nope",
			wantErr: true,
		},
		{
			name:    "path is a directory",
			path:    "/docs",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON

			path := seedTestImage(t)

			output, err := captureOutput(t, func() error {
				return runCat([]string{path, tt.path})
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runCat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}
