package blobstore

import (
	"context"
	"io"
	"sync"
)

// UploadFunc consumes body until it ends and stores what it read. It must
// fail, and store nothing, when reading body fails.
type UploadFunc func(ctx context.Context, body io.Reader) error

// PipeUpload runs upload in the background and returns a WritableBlob
// feeding its body. Close ends the body and waits for upload. Abort fails
// the body with ErrAborted and cancels ctx.
func PipeUpload(ctx context.Context, upload UploadFunc) WritableBlob {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()

	b := &pipeBlob{
		pw:     pw,
		done:   make(chan error, 1),
		cancel: cancel,
	}

	go func() {
		err := upload(ctx, pr)
		_ = pr.CloseWithError(err)
		b.done <- err
	}()

	return b
}

type pipeBlob struct {
	pw     *io.PipeWriter
	done   chan error
	cancel context.CancelFunc

	mu       sync.Mutex
	finished bool
	err      error
}

func (b *pipeBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

func (b *pipeBlob) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return b.err
	}
	b.finished = true

	_ = b.pw.Close()
	b.err = <-b.done
	b.cancel()
	return b.err
}

func (b *pipeBlob) Abort() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return nil
	}
	b.finished = true

	_ = b.pw.CloseWithError(ErrAborted)
	b.cancel()
	<-b.done
	return nil
}
