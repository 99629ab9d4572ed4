package develop

import(
	"fmt"
	"log"
	"sync"
)

type developJob struct {
	Frame
	OutBase string

	// Output
	Written []string
	Err     error
}

// OutputBase picks where frame i's outputs go. An empty override means
// next to the input; with more than one frame the override gets a
// numeric suffix, so frames don't write over each other.
func (b Batch)OutputBase(i int, override string) string {
	switch {
	case override == "":
		return b.Frames[i].OutputBase()
	case len(b.Frames) == 1:
		return override
	default:
		return fmt.Sprintf("%s-%03d", override, i)
	}
}

// DevelopAll runs every frame through the developer and writes the
// outputs, using a pool of nWorkers goroutines. Each frame is
// independent, and the developer is read-only, so they can run in any
// order. It returns one error per frame that failed.
func (b Batch)DevelopAll(d *Developer, nWorkers int, outBaseOverride string) []error {
	if nWorkers < 1 {
		nWorkers = 1
	}

	var wg sync.WaitGroup
	jobsChan    := make(chan developJob, len(b.Frames))
	resultsChan := make(chan developJob, len(b.Frames))

	// Kick off worker pool
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				job.Written, job.Err = d.developAndWrite(job.Frame, job.OutBase)
				resultsChan<- job
			}
		}()
	}

	// Feed in jobs
	for i, f := range b.Frames {
		jobsChan<- developJob{Frame: f, OutBase: b.OutputBase(i, outBaseOverride)}
	}

	close(jobsChan)
	wg.Wait()
	close(resultsChan)

	// results processor
	errs := []error{}
	for result := range resultsChan {
		if result.Err != nil {
			log.Printf(" -- %s: FAILED: %v\n", result.Filename(), result.Err)
			errs = append(errs, fmt.Errorf("%s: %w", result.Filename(), result.Err))
		} else {
			log.Printf(" -- %s: wrote %d files to %s*\n", result.Filename(), len(result.Written), result.OutBase)
		}
	}

	return errs
}

func (d *Developer)developAndWrite(f Frame, base string) ([]string, error) {
	if d.Verbosity > 0 {
		d.logf("developing %s\n", f)
	}

	r, err := d.ProcessFrame(f)
	if err != nil {
		return nil, err
	}

	return r.WriteAll(base, d.Config)
}
