package defaults

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"CollectorTimeout", CollectorTimeout, 5 * time.Second, 30 * time.Second},
		{"CollectorConnectionsTimeout", CollectorConnectionsTimeout, 1 * time.Second, CollectorTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestModelHyperparameters(t *testing.T) {
	if ModelNumTrees != 100 {
		t.Errorf("ModelNumTrees = %d, want 100", ModelNumTrees)
	}
	if ModelContamination != 0.05 {
		t.Errorf("ModelContamination = %v, want 0.05", ModelContamination)
	}
	if ModelSeed != 42 {
		t.Errorf("ModelSeed = %d, want 42", ModelSeed)
	}
}

func TestPaths(t *testing.T) {
	if got := fmt.Sprintf(DatasetFilePattern, 7); got != "system_snapshot_0007.json" {
		t.Errorf("DatasetFilePattern rendered %q", got)
	}
	if filepath.Dir(ModelPath) != filepath.Join(OutputDir, "models") {
		t.Errorf("ModelPath %q is not under %s/models", ModelPath, OutputDir)
	}
	if filepath.Dir(DatasetDir) != OutputDir {
		t.Errorf("DatasetDir %q is not under %s", DatasetDir, OutputDir)
	}
}
