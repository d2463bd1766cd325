// Package integration_test runs the sempress binary end to end.
//
// Install the binary before running these tests:
//
//	go install github.com/abhinav/sempress/cmd/sempress
package integration_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/io/ioutil"
)

const _giveSource = `#include <iostream>

namespace demo {

template <typename T>
class Counter {
 public:
  explicit Counter(T start) : value_(start) {}

  void increment() {
    if (value_ < limit) {
      ++value_;
    }
  }

  T value() const { return value_; }

 private:
  static constexpr int limit = 100;
  T value_;
};

}  // namespace demo

int main() {
  demo::Counter<int> c(0);
  for (int i = 0; i < 10; i++) {
    c.increment();
  }
  std::cout << c.value() << std::endl;
  return 0;
}
`

func TestRoundTrip(t *testing.T) {
	exe := sempressBinary(t)
	root := t.TempDir()

	srcDir := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(srcDir, 0o755))
	source := filepath.Join(srcDir, "counter.cpp")
	require.NoError(t, os.WriteFile(source, []byte(_giveSource), 0o644))

	table := filepath.Join(root, "table.txt")
	compressed := filepath.Join(root, "counter.bin")
	decompressed := filepath.Join(root, "counter.out.cpp")

	run(t, exe, nil, "-count", "-o", table, srcDir)
	run(t, exe, nil, "-table", table, source, compressed)
	run(t, exe, nil, "-d", "-table", table, compressed, decompressed)

	got, err := os.ReadFile(decompressed)
	require.NoError(t, err)
	assert.Equal(t, _giveSource, string(got))

	info, err := os.Stat(compressed)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(_giveSource)),
		"compressed file should be smaller than the source")
}

func TestEscapeFromEnvironment(t *testing.T) {
	exe := sempressBinary(t)
	root := t.TempDir()

	table := filepath.Join(root, "table.txt")
	require.NoError(t, os.WriteFile(table, []byte("int:4\n :8\n:2\n"), 0o644))

	give := "int x = 42;\n"
	input := filepath.Join(root, "in.cpp")
	require.NoError(t, os.WriteFile(input, []byte(give), 0o644))

	env := []string{"SEMPRESS_OPTS=-unknown escape -table " + table}
	run(t, exe, env, input, filepath.Join(root, "in.bin"))
	run(t, exe, env, "-d", filepath.Join(root, "in.bin"), filepath.Join(root, "out.cpp"))

	got, err := os.ReadFile(filepath.Join(root, "out.cpp"))
	require.NoError(t, err)
	assert.Equal(t, give, string(got))
}

func TestFailureExitCode(t *testing.T) {
	exe := sempressBinary(t)
	root := t.TempDir()

	table := filepath.Join(root, "table.txt")
	require.NoError(t, os.WriteFile(table, []byte("a:1\n"), 0o644))
	input := filepath.Join(root, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("abc"), 0o644))

	var stderr bytes.Buffer
	cmd := exec.Command(exe, "-table", table, input, filepath.Join(root, "out.bin"))
	cmd.Stdout = ioutil.TestLogWriter(t, "[stdout] ")
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "cannot encode character 'b' at offset 1")
}

func sempressBinary(t testing.TB) string {
	t.Helper()

	if exe := os.Getenv("SEMPRESS_BIN"); len(exe) > 0 {
		return exe
	}

	exe, err := exec.LookPath("sempress")
	if err != nil {
		t.Skip("sempress not found in PATH; set SEMPRESS_BIN")
	}
	return exe
}

func run(t testing.TB, exe string, env []string, args ...string) {
	t.Helper()

	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = ioutil.TestLogWriter(t, "[stdout] ")
	cmd.Stderr = ioutil.TestLogWriter(t, "[stderr] ")
	require.NoError(t, cmd.Run(), "sempress %q", args)
}
