package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/x/aswap"
	abci "github.com/tendermint/tendermint/abci/types"
)

// exportPageSize is the number of swaps read from the store at once.
const exportPageSize = 100

func cmdList(input io.Reader, output io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List identifiers of stored swaps in ascending order. Use -after with the last
identifier of the previous page to list the next page.
`)
		fl.PrintDefaults()
	}
	storeFlags(fl, cfg)
	var (
		afterFl = fl.String("after", "", "List swaps with identifier greater than this one.")
		limitFl = fl.Int("limit", aswap.DefaultLimit, fmt.Sprintf("Page size, at most %d.", aswap.MaxLimit))
	)
	fl.Parse(args)

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	var res *aswap.ListResponse
	err = readOnly(cfg, logger, func(db htlc.ReadOnlyKVStore) error {
		res, err = aswap.List(db, *afterFl, limitFl)
		return err
	})
	if err != nil {
		return err
	}
	return writeJSON(output, res)
}

func cmdShow(input io.Reader, output io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print details of a single swap.
`)
		fl.PrintDefaults()
	}
	storeFlags(fl, cfg)
	idFl := fl.String("id", "", "Identifier of the swap.")
	fl.Parse(args)

	if *idFl == "" {
		flagDie("-id is required")
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	var res *aswap.DetailsResponse
	err = readOnly(cfg, logger, func(db htlc.ReadOnlyKVStore) error {
		res, err = aswap.Details(db, *idFl)
		return err
	})
	if err != nil {
		return err
	}
	raw, err := aswap.Codec().MarshalJSONIndent(res, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdExpired(input io.Reader, output io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List identifiers of swaps that are expired at given block and can only be
refunded.
`)
		fl.PrintDefaults()
	}
	storeFlags(fl, cfg)
	var (
		heightFl = fl.Int64("height", 0, "Current block height.")
		timeFl   = flTime(fl, "time", time.Now(), "Current block time in RFC3339 format.")
		afterFl  = fl.String("after", "", "List swaps with identifier greater than this one.")
		limitFl  = fl.Int("limit", aswap.DefaultLimit, fmt.Sprintf("Page size, at most %d.", aswap.MaxLimit))
	)
	fl.Parse(args)

	if *heightFl <= 0 {
		flagDie("-height must be positive")
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	header := abci.Header{Height: *heightFl, Time: timeFl.Time()}
	block, err := htlc.NewBlockInfo(header, "aswapd", logger)
	if err != nil {
		return err
	}

	var res *aswap.ListResponse
	err = readOnly(cfg, logger, func(db htlc.ReadOnlyKVStore) error {
		res, err = aswap.ListExpired(db, block, *afterFl, limitFl)
		return err
	})
	if err != nil {
		return err
	}
	return writeJSON(output, res)
}

func cmdImport(input io.Reader, output io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a JSON serialized genesis from the input and create all swaps it
declares. Nothing is written if any of the swaps cannot be created.
`)
		fl.PrintDefaults()
	}
	storeFlags(fl, cfg)
	dryRunFl := fl.Bool("dry-run", false, "Print changed keys instead of committing them.")
	fl.Parse(args)

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	genesis, err := aswap.ReadGenesis(input)
	if err != nil {
		return err
	}

	db, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	cache := db.CacheWrap()
	defer cache.Discard()

	if *dryRunFl {
		rec := store.NewRecordingStore(cache)
		if err := aswap.ImportGenesis(rec, genesis, logger); err != nil {
			return err
		}
		changes := rec.KVPairs()
		keys := make([]string, 0, len(changes))
		for k := range changes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(output, "%s\t%d bytes\n", k, len(changes[k]))
		}
		return nil
	}

	if err := aswap.ImportGenesis(cache, genesis, logger); err != nil {
		return err
	}
	if err := cache.Write(); err != nil {
		return err
	}
	id, err := db.Commit()
	if err != nil {
		return err
	}
	logger.Info("import committed", "version", id.Version, "swaps", len(genesis.Swaps))
	return nil
}

func cmdExport(input io.Reader, output io.Writer, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Write all stored swaps to the output as a JSON serialized genesis.
`)
		fl.PrintDefaults()
	}
	storeFlags(fl, cfg)
	fl.Parse(args)

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	var genesis *aswap.Genesis
	err = readOnly(cfg, logger, func(db htlc.ReadOnlyKVStore) error {
		genesis, err = aswap.ExportGenesis(db, exportPageSize)
		return err
	})
	if err != nil {
		return err
	}
	return aswap.WriteGenesis(output, genesis)
}

func writeJSON(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}
