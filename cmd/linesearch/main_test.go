package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/db"
	"github.com/cbsinteractive/linesearch/service"
	"github.com/cbsinteractive/linesearch/timecode"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINESEARCH_CONFIG", "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func devServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := db.NewMemory()
	err := repo.PutLines("P1", api.Table{
		{
			{Value: "P1", Kind: api.Prod},
			{Value: "00:00:01:00", Kind: api.TCIn},
			{Value: "00:00:02:00", Kind: api.TCOut},
			{Value: "hello world", Kind: api.Line},
		},
		{
			{Value: "P1", Kind: api.Prod},
			{Value: "00:01:00:00", Kind: api.TCIn},
			{Value: "00:01:02:00", Kind: api.TCOut},
			{Value: "hello again", Kind: api.Line},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := logtest.NewNullLogger()
	srv := httptest.NewServer(service.New(repo, timecode.F25, logger, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestPingCmd(t *testing.T) {
	srv := devServer(t)
	out, err := run(t, "ping", "--base-url", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "pong!" {
		t.Fatalf("out = %q", out)
	}
}

func TestSearchCmd(t *testing.T) {
	srv := devServer(t)
	out, err := run(t, "search", "--base-url", srv.URL, "--fps", "25", "--tc", "00:00:00:00-00:00:10:00", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "hello world") || strings.Contains(out, "hello again") {
		t.Fatalf("out:\n%s", out)
	}
	if !strings.Contains(out, "Prod. ID") || !strings.Contains(out, "1 result(s)") {
		t.Fatalf("out:\n%s", out)
	}
}

func TestSearchCmdBadRange(t *testing.T) {
	if _, err := run(t, "search", "--mock", "--tc", "00:00:10:00-00:00:05:00"); !strings.Contains(err.Error(), "ends before it starts") {
		t.Fatalf("error = %v", err)
	}
}

func TestSearchCmdMock(t *testing.T) {
	out, err := run(t, "search", "--mock", "--mock-delay", "0s", "-n", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Where were you last night?") || !strings.Contains(out, "2 result(s), hash mock") {
		t.Fatalf("out:\n%s", out)
	}
}

func TestTimecodeCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "one hour",
			args: []string{"tc", "--fps", "25", "01:00:00:00"},
			want: []string{"frames    90000", "duration  1h0m0s", "fields    1 0 0 0"},
		},
		{
			name: "drop frame",
			args: []string{"tc", "--fps", "29.97DF", "00:01:00;02"},
			want: []string{"frames    1800", "fps       29.97DF"},
		},
		{
			name: "from frames",
			args: []string{"tc", "--fps", "29.97DF", "--frames", "1800"},
			want: []string{"timecode  00:01:00;02"},
		},
		{
			name:    "dropped label",
			args:    []string{"tc", "--fps", "29.97DF", "00:01:00;00"},
			wantErr: true,
		},
		{
			name:    "bad syntax",
			args:    []string{"tc", "1:00"},
			wantErr: true,
		},
		{
			name:    "bad frame count",
			args:    []string{"tc", "--frames", "many"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("out missing %q:\n%s", w, out)
				}
			}
		})
	}
}
