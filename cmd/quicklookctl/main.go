// quicklook - greyscale previews of radiometric instrument bands
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"log"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/quicklook/quicklookclient"
)

var version = "<not set>"

type Args struct {
	Still   bool `arg:"-s,--still" help:"save the latest quicklook as still.png"`
	Extrema bool `arg:"-e,--extrema" help:"print the radiance range of the latest quicklook"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	arg.MustParse(&args)
	return args
}

func main() {
	log.SetFlags(0)
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()
	if !args.Still && !args.Extrema {
		return errors.New("nothing to do, use --still or --extrema")
	}

	if args.Extrema {
		lo, hi, err := quicklookclient.Extrema()
		if err != nil {
			return err
		}
		log.Printf("extrema: min=%f max=%f", lo, hi)
	}
	if args.Still {
		if err := quicklookclient.TakeQuicklook(); err != nil {
			return err
		}
		log.Printf("still requested")
	}
	return nil
}
