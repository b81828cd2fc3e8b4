// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockmarket"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "portfolio")
	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&reportCmd{}, "portfolio")

	c.Register(&exportCmd{}, "interchange")
	c.Register(&importCmd{}, "interchange")

	c.Register(&watchCmd{}, "watching")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.txt", "Path to the portfolio file")
var watchFile = flag.String("watch-file", "watchlist.txt", "Path to the watch list file")
var currency = flag.String("currency", "USD", "Currency of the portfolio cash and prices")

// loadPortfolio loads the app portfolio file.
func loadPortfolio() (*stockmarket.Portfolio, error) {
	return stockmarket.LoadPortfolio(*portfolioFile, *currency)
}

// savePortfolio saves into the app portfolio file.
func savePortfolio(p *stockmarket.Portfolio) error {
	return stockmarket.SavePortfolio(*portfolioFile, p)
}

// loadWatchList loads the app watch list file: one symbol per line.
// A missing file is an empty watch list.
func loadWatchList() (*stockmarket.WatchList, error) {
	w := stockmarket.NewWatchList()

	f, err := os.Open(*watchFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, watch list does not exist, starting empty")
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open watch list %q: %w", *watchFile, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		symbol := scanner.Text()
		if symbol == "" {
			continue
		}
		if _, err := w.Add(symbol); err != nil {
			return nil, fmt.Errorf("invalid watch list %q: %w", *watchFile, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read watch list %q: %w", *watchFile, err)
	}
	return w, nil
}

// saveWatchList saves into the app watch list file.
func saveWatchList(w *stockmarket.WatchList) error {
	f, err := os.Create(*watchFile)
	if err != nil {
		return fmt.Errorf("could not write watch list %q: %w", *watchFile, err)
	}
	defer f.Close()

	for symbol := range w.Symbols() {
		fmt.Fprintln(f, symbol)
	}
	return nil
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
