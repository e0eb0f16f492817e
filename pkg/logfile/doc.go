// Package logfile persists log lines to per-day files and prunes old ones.
//
// Rotator decides where a process writes and removes expired entries:
//
//	rot := logfile.NewRotator("logs")
//	path, err := rot.Path(time.Now())    // logs/2024-05-01/20240501_101500.log
//	report, err := rot.Prune(ctx, 7)     // day dirs and *.log older than 7 days
//
// Queue is the durable write queue in front of that file. Lines are appended
// by one goroutine in the order they were enqueued:
//
//	q := logfile.NewQueue(path, logfile.WithOnError(func(err error) {
//	    fmt.Fprintln(os.Stderr, err)
//	}))
//	q.Enqueue(line)
//	_ = q.Flush(ctx)
//	_ = q.Close(ctx)
//
// Write failures never reach the caller of Enqueue; they go to the OnError
// hook and the affected batch is dropped.
package logfile
