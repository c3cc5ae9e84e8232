package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/ChizhovVadim/chesssearch/internal/evalbuilder"
	"github.com/ChizhovVadim/chesssearch/pkg/common"
	"github.com/ChizhovVadim/chesssearch/pkg/engine"
	"github.com/rs/zerolog"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const name = "chesssearch"

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

type cliArgs struct {
	fen      string
	moves    string
	eval     string
	logLevel string
	limits   common.LimitsType
	threads  int
	hash     int
	plain    bool
}

func main() {
	var args cliArgs
	flag.StringVar(&args.fen, "fen", common.InitialPositionFen, "position to search")
	flag.StringVar(&args.moves, "moves", "", "moves to play from the position, space separated")
	flag.StringVar(&args.eval, "eval", "", "evaluation function: "+strings.Join(evalbuilder.Names, ", "))
	flag.StringVar(&args.logLevel, "loglevel", "info", "log level")
	flag.IntVar(&args.limits.Depth, "depth", 0, "depth limit")
	flag.IntVar(&args.limits.MoveTime, "movetime", 0, "time limit in milliseconds")
	flag.IntVar(&args.limits.Nodes, "nodes", 0, "node limit")
	flag.IntVar(&args.limits.WhiteTime, "wtime", 0, "white clock in milliseconds")
	flag.IntVar(&args.limits.BlackTime, "btime", 0, "black clock in milliseconds")
	flag.IntVar(&args.limits.WhiteIncrement, "winc", 0, "white increment in milliseconds")
	flag.IntVar(&args.limits.BlackIncrement, "binc", 0, "black increment in milliseconds")
	flag.IntVar(&args.limits.MovesToGo, "movestogo", 0, "moves to the next time control")
	flag.IntVar(&args.threads, "threads", 1, "search threads")
	flag.IntVar(&args.hash, "hash", 16, "transposition table size in megabytes")
	flag.BoolVar(&args.plain, "plain", false, "disable forward pruning")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	var level, err = zerolog.ParseLevel(args.logLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad log level")
	}
	logger = logger.Level(level)

	logger.Info().
		Str("version", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtime", runtime.Version()).
		Int("numCPU", runtime.NumCPU()).
		Msg(name)

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, args, logger); err != nil {
		logger.Fatal().Err(err).Msg("search failed")
	}
}

func run(ctx context.Context, args cliArgs, logger zerolog.Logger) error {
	var p, err = common.NewPositionFromFEN(args.fen)
	if err != nil {
		return err
	}
	for _, lan := range strings.Fields(args.moves) {
		if err := p.MakeMoveLAN(lan); err != nil {
			return err
		}
	}

	var evalBuilder, errEval = evalbuilder.Get(args.eval)
	if errEval != nil {
		return errEval
	}

	var eng = engine.NewEngine(evalBuilder)
	eng.Options.Hash = args.hash
	eng.Options.Threads = args.threads
	eng.Options.ProgressMinNodes = 0
	eng.Options.Logger = logger
	if args.plain {
		eng.Options.DisableForwardPruning()
	}

	var limits = args.limits
	if limits == (common.LimitsType{}) {
		limits.Infinite = true
	}

	logger.Info().Str("fen", p.String()).Int("threads", args.threads).Msg("search started")
	var si = eng.Search(ctx, common.SearchParams{
		Position: p,
		Limits:   limits,
		Progress: func(si common.SearchInfo) {
			fmt.Println(searchInfoString(si))
		},
	})
	fmt.Println(searchInfoString(si))
	if bestMove := si.BestMove(); bestMove != common.MoveEmpty {
		fmt.Println("bestmove", bestMove)
	} else {
		fmt.Println("bestmove (none)")
	}
	return nil
}

func searchInfoString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv %v", common.MovesToString(si.MainLine))
	}
	return sb.String()
}
