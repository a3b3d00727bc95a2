package encoding

import (
	"io"
	"sync"
)

// Stage is one step of a streaming pipeline. Both methods of an Encoder or
// Decoder have this shape.
type Stage func(dst io.Writer, src io.Reader) error

// Chain feeds src through stages in order and writes the result to dst.
// Stages are connected with io.Pipe; every stage but the last runs in its own
// goroutine. When several stages fail, the error of the earliest one wins.
func Chain(dst io.Writer, src io.Reader, stages ...Stage) error {
	if len(stages) == 0 {
		_, err := io.Copy(dst, src)
		return err
	}

	upstream := stages[:len(stages)-1]
	errs := make([]error, len(stages))
	readers := make([]*io.PipeReader, 0, len(upstream))

	var wg sync.WaitGroup
	r := src
	for i, stage := range upstream {
		pr, pw := io.Pipe()
		wg.Add(1)
		go func(i int, stage Stage, in io.Reader) {
			defer wg.Done()
			errs[i] = stage(pw, in)
			_ = pw.CloseWithError(errs[i])
		}(i, stage, r)
		readers = append(readers, pr)
		r = pr
	}

	last := len(stages) - 1
	errs[last] = stages[last](dst, r)
	if errs[last] == nil && last > 0 {
		// let upstream stages run to the end so trailing input is still checked
		_, errs[last] = io.Copy(io.Discard, r)
	}
	for _, pr := range readers {
		_ = pr.CloseWithError(errs[last])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
