package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ChizhovVadim/chesssearch/pkg/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	var fen = flag.String("fen", common.InitialPositionFen, "position")
	var depth = flag.Int("depth", 5, "perft depth")
	var divide = flag.Bool("divide", false, "print node counts per root move")
	var threads = flag.Int("threads", runtime.NumCPU(), "worker goroutines")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var p, err = common.NewPositionFromFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad position")
	}

	var start = time.Now()
	total, entries, err := parallelPerft(p, *depth, *threads)
	if err != nil {
		logger.Fatal().Err(err).Msg("perft failed")
	}
	if *divide {
		for _, entry := range entries {
			fmt.Printf("%v: %v\n", entry.Move, entry.Nodes)
		}
	}
	var elapsed = time.Since(start)
	fmt.Println("nodes", total)
	logger.Info().
		Int("depth", *depth).
		Int("nodes", total).
		Dur("elapsed", elapsed).
		Int64("nps", int64(total)*1000/(elapsed.Milliseconds()+1)).
		Msg("perft")
}

// parallelPerft returns the leaf count at depth along with its per move split.
func parallelPerft(p *common.Position, depth, threads int) (int, []common.PerftEntry, error) {
	if depth <= 0 {
		return p.Perft(0), nil, nil
	}
	var entries, err = parallelDivide(p, depth, threads)
	if err != nil {
		return 0, nil, err
	}
	var total = 0
	for _, entry := range entries {
		total += entry.Nodes
	}
	return total, entries, nil
}

// parallelDivide counts leaf nodes under every legal root move, one goroutine per move.
func parallelDivide(p *common.Position, depth, threads int) ([]common.PerftEntry, error) {
	if depth <= 0 {
		return nil, nil
	}
	var moves = p.GenerateLegalMoves()
	var result = make([]common.PerftEntry, len(moves))
	var g errgroup.Group
	g.SetLimit(threads)
	for i, move := range moves {
		var i, move = i, move
		g.Go(func() error {
			var child = p.Clone()
			if !child.MakeMove(move) {
				return fmt.Errorf("illegal move %v in %v", move, p)
			}
			result[i] = common.PerftEntry{Move: move, Nodes: child.Perft(depth - 1)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

