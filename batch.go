// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package urkel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CommitAll commits every tree in trees concurrently, one goroutine
// per tree. The specification (spec.md §5) permits parallelism across
// independent trees while forbidding it within a single tree; this
// helper is exactly that and nothing more — every goroutine owns
// exactly one *Tree end to end; no tree is ever touched by more than
// one goroutine.
//
// If any commit fails, CommitAll returns the first error encountered
// (errgroup's usual behaviour) once every goroutine has finished; the
// roots slice still has one entry per input tree, with the zero Root
// in the position of any tree whose commit failed.
func CommitAll(ctx context.Context, trees []*Tree) ([]Root, error) {
	roots := make([]Root, len(trees))

	g, gctx := errgroup.WithContext(ctx)
	for i, tr := range trees {
		i, tr := i, tr
		g.Go(func() error {
			root, err := tr.Commit(gctx)
			if err != nil {
				return err
			}
			roots[i] = root
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return roots, err
	}
	return roots, nil
}
