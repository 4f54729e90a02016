package archiver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// RemoteCopier moves one file between the local filesystem and object
// storage. Both directions go through the same call, rclone style:
// whichever side is a remote path is resolved by the backend.
type RemoteCopier interface {
	Copy(ctx context.Context, src, dst string) error
}

// Rclone copies via an rclone subprocess. rclone owns the retry
// policy, credentials and backend selection; the archiver only ever
// sees a path like "r2:archive/alpha/...".
type Rclone struct {
	// Binary overrides the rclone executable, for tests.
	Binary string
}

func (r Rclone) Copy(ctx context.Context, src, dst string) error {
	binary := r.Binary
	if binary == "" {
		binary = "rclone"
	}
	cmd := exec.CommandContext(ctx, binary, "copyto", "--retries=10", "--retries-sleep=60s", src, dst)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rclone copyto %s %s: %w (%s)", src, dst, err, out)
	}
	return nil
}

// sha256File returns the hex digest of a file's contents.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
