package database

import (
	"testing"

	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"postgres", Config{Driver: "postgres", Host: "localhost", Port: 5432}, false},
		{"mysql", Config{Driver: "mysql", Host: "localhost", Port: 3306}, false},
		{"sqlite", Config{Driver: "sqlite", FilePath: ":memory:"}, false},
		{"sqlite without path", Config{Driver: "sqlite"}, true},
		{"unknown", Config{Driver: "oracle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d.Name() != tt.cfg.Driver {
				t.Fatalf("dialector %q for driver %q", d.Name(), tt.cfg.Driver)
			}
		})
	}
}

func TestStringArray(t *testing.T) {
	var a StringArray
	if err := a.Scan(`["x","y","x"]`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !a.Contains("y") || a.Contains("z") {
		t.Fatalf("unexpected contents %v", a)
	}
	if got := a.Without("x"); len(got) != 1 || got[0] != "y" {
		t.Fatalf("unexpected Without result %v", got)
	}

	v, err := StringArray(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("nil value = %v, %v", v, err)
	}

	var empty StringArray
	if err := empty.Scan(nil); err != nil || empty != nil {
		t.Fatalf("scan nil: %v %v", empty, err)
	}
}

func TestLogLevel(t *testing.T) {
	if logLevel("SILENT") != logger.Silent || logLevel("") != logger.Warn {
		t.Fatal("unexpected log level mapping")
	}
}
