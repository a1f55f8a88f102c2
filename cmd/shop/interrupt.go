package main

import "context"

// watchInterrupt calls exit when ctx is cancelled before finished closes,
// without waiting for the menu loop to return from a blocked stdin read.
// stop runs first so a further signal takes the default action.
func watchInterrupt(ctx context.Context, stop context.CancelFunc, finished <-chan struct{}, exit func()) <-chan struct{} {
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		select {
		case <-finished:
		case <-ctx.Done():
			stop()
			exit()
		}
	}()
	return watched
}
