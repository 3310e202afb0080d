package tokenizer

import (
	"context"
	"runtime"
	"sync"

	"github.com/wakachi-nlp/wakachi/morpheme"
)

// AsyncResult is one TokenizeSentencesAsync output: the tokenized sentence
// at its original input position, or the error that tokenizing it
// produced.
type AsyncResult struct {
	List *morpheme.MorphemeList
	Err  error
}

type asyncJob struct {
	seq  int
	text string
}

type asyncResultSeq struct {
	seq int
	AsyncResult
}

// TokenizeSentencesAsync tokenizes each string received on in, up to
// parallelism goroutines concurrently, and emits the results on the
// returned channel in the same order the inputs arrived: a
// channel-plus-WaitGroup worker pool reordering via a per-job sequence
// number rather than sorting everything at the end, since results here
// must stream rather than wait for every input to finish. parallelism <= 0
// selects runtime.NumCPU(). Cancelling ctx stops accepting new work and
// closes the output channel once in-flight jobs drain.
func (t *Tokenizer) TokenizeSentencesAsync(ctx context.Context, mode morpheme.Mode, in <-chan string, parallelism int) <-chan AsyncResult {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	jobs := make(chan asyncJob, parallelism)
	results := make(chan asyncResultSeq, parallelism)

	var workers sync.WaitGroup
	workers.Add(parallelism)
	for i := 0; i < parallelism; i++ {
		go func() {
			defer workers.Done()
			for job := range jobs {
				list, err := t.Tokenize(mode, job.text)
				select {
				case results <- asyncResultSeq{seq: job.seq, AsyncResult: AsyncResult{List: list, Err: err}}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		seq := 0
		for {
			select {
			case <-ctx.Done():
				return
			case text, ok := <-in:
				if !ok {
					return
				}
				select {
				case jobs <- asyncJob{seq: seq, text: text}:
					seq++
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	out := make(chan AsyncResult, parallelism)
	go reorderResults(ctx, results, out)
	return out
}

// reorderResults buffers results arriving out of order (workers race to
// finish) and releases them on out in strict sequence-number order.
func reorderResults(ctx context.Context, in <-chan asyncResultSeq, out chan<- AsyncResult) {
	defer close(out)
	pending := make(map[int]AsyncResult)
	next := 0
	for r := range in {
		pending[r.seq] = r.AsyncResult
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			select {
			case out <- ready:
			case <-ctx.Done():
				return
			}
			next++
		}
	}
}
