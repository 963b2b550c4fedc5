package diff

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/oneconcern/bommon/pkg/diff/status"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/tree"
	"go.uber.org/zap"
)

// notUserFiles are bookkeeping files, never compared
var notUserFiles = map[string]struct{}{
	".icminfo":      {},
	"icm_pmlog.txt": {},
}

// FileDifference is a file that differs between both sides of a pair.
//
// Kind is FirstOnly for a removed file, SecondOnly for an added file, and Differing for a changed one.
type FileDifference struct {
	Kind   Kind
	Name   string
	First  *model.FileDescriptor
	Second *model.FileDescriptor
}

// Result is the classification of a pair
type Result struct {
	Pair  *Pair
	Kind  Kind
	Files []FileDifference
}

// resultEvent catches a single result with possible classification error
type resultEvent struct {
	result Result
	err    error
}

type byKey []Result

func (k byKey) Swap(i, j int) {
	k[i], k[j] = k[j], k[i]
}
func (k byKey) Len() int {
	return len(k)
}
func (k byKey) Less(i, j int) bool {
	return k[i].Pair.Key < k[j].Pair.Key
}

// classify performs a parallel classification of the pairs of a table, then reorders the result by key.
// It stops on the first error.
func (c *Comparison) classify(ctx context.Context, table Table) ([]Result, error) {
	var (
		workers, wg sync.WaitGroup
		werr        error
	)

	keys := table.Keys()
	resultChan := make(chan resultEvent)
	keyChan := make(chan string)
	doneChan := make(chan struct{}, 1)
	defer close(doneChan)

	// spin up workers pool
	for i := 0; i < minInt(c.concurrency, len(keys)); i++ {
		workers.Add(1)
		go c.classifyAsync(ctx, table, keyChan, resultChan, &workers)
	}

	results := make(byKey, 0, len(keys))

	// distribute work. Stop immediately on first error reported by a worker
	wg.Add(1)
	go distributeKeys(keys)(keyChan, doneChan, &wg)

	// wait for workers to complete
	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		workers.Wait()
		close(resultChan)
	}(&wg)

	// watch for results and coalesce
	for ev := range resultChan {
		if ev.err != nil && werr == nil {
			werr = ev.err
			doneChan <- struct{}{} // interrupts key distribution (non-blocking)
			for range resultChan {
			} // wait for close
			break
		}
		results = append(results, ev.result)
	}

	wg.Wait()

	if werr != nil {
		return nil, werr
	}

	sort.Sort(results)
	return results, nil
}

// classifyAsync classifies the pair for each single key submitted as input
func (c *Comparison) classifyAsync(ctx context.Context, table Table, input <-chan string, output chan<- resultEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for k := range input {
		if err := ctx.Err(); err != nil {
			output <- resultEvent{err: err}
			continue
		}
		result, err := c.classifyPair(ctx, table[k])
		output <- resultEvent{result: result, err: err}
	}
}

func (c *Comparison) classifyPair(ctx context.Context, pair *Pair) (Result, error) {
	result := Result{Pair: pair, Kind: pair.Kind()}
	if result.Kind == Identical || c.files == nil {
		return result, nil
	}
	files, err := c.fileDifferences(ctx, pair)
	if err != nil {
		return Result{}, status.ErrFiles.Wrap(err)
	}
	result.Files = files
	c.l.Debug("compared files", zap.String("pair", pair.Key), zap.Int("differences", len(files)))
	return result, nil
}

func (c *Comparison) listFiles(ctx context.Context, pair *Pair, k *tree.Key) (map[string]model.FileDescriptor, error) {
	if k == nil {
		return nil, nil
	}
	files, err := c.files.ListFiles(ctx, k.Project, k.Variant, k.Libtype, k.Library, k.Release)
	if err != nil {
		return nil, err
	}
	keyed := make(map[string]model.FileDescriptor, len(files))
	for name, f := range files {
		if _, skip := notUserFiles[path.Base(name)]; skip {
			continue
		}
		if pair.CrossProject {
			keyed[k.Libtype+":"+name] = f
			continue
		}
		keyed[k.Location().String()+":"+name] = f
	}
	return keyed, nil
}

// fileDifferences lists the files changed, removed or added between both sides of a pair, sorted by name
func (c *Comparison) fileDifferences(ctx context.Context, pair *Pair) ([]FileDifference, error) {
	first, err := c.listFiles(ctx, pair, pair.First)
	if err != nil {
		return nil, err
	}
	second, err := c.listFiles(ctx, pair, pair.Second)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(first)+len(second))
	for name := range first {
		names = append(names, name)
	}
	for name := range second {
		if _, ok := first[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var differences []FileDifference
	for _, name := range names {
		f1, inFirst := first[name]
		f2, inSecond := second[name]
		switch {
		case inFirst && inSecond:
			identical, err := c.files.IsFileIdentical(ctx, f1.Path(), f2.Path())
			if err != nil {
				return nil, err
			}
			if !identical {
				differences = append(differences, FileDifference{Kind: Differing, Name: name, First: &f1, Second: &f2})
			}
		case inFirst:
			differences = append(differences, FileDifference{Kind: FirstOnly, Name: name, First: &f1})
		default:
			differences = append(differences, FileDifference{Kind: SecondOnly, Name: name, Second: &f2})
		}
	}
	return differences, nil
}

func distributeKeys(keys []string) func(chan<- string, <-chan struct{}, *sync.WaitGroup) {
	return func(keyChan chan<- string, doneChan <-chan struct{}, wg *sync.WaitGroup) {
		defer func() {
			close(keyChan)
			wg.Done()
		}()
		for _, k := range keys {
			select {
			case keyChan <- k:
			case <-doneChan:
				return
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
