/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package catalog builds the registry of every cipher type.
package catalog

import (
	"fmt"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/amsco"
	"github.com/bgallie/classic/cryptors/aristocrat"
	"github.com/bgallie/classic/cryptors/baconian"
	"github.com/bgallie/classic/cryptors/bifid"
	"github.com/bgallie/classic/cryptors/cadenus"
	"github.com/bgallie/classic/cryptors/digrafid"
	"github.com/bgallie/classic/cryptors/homophonic"
	"github.com/bgallie/classic/cryptors/myszkowski"
	"github.com/bgallie/classic/cryptors/nicodemus"
	"github.com/bgallie/classic/cryptors/playfair"
	"github.com/bgallie/classic/cryptors/pollux"
	"github.com/bgallie/classic/cryptors/quagmire"
	"github.com/bgallie/classic/cryptors/route"
	"github.com/bgallie/classic/cryptors/swagman"
	"github.com/bgallie/classic/cryptors/vigenere"
	"github.com/bgallie/classic/score"
)

// New returns a registry holding every cipher type, each scoring its
// solutions with s.
func New(s score.Scorer) *cryptors.Registry {
	r := cryptors.NewRegistry(s)
	r.Register(aristocrat.Type, func(s score.Scorer) cryptors.Cipher { return aristocrat.New(s) })
	for _, ctor := range []func(score.Scorer) *vigenere.Cipher{
		vigenere.NewVigenere,
		vigenere.NewVariant,
		vigenere.NewBeaufort,
		vigenere.NewGronsfeld,
		vigenere.NewPorta,
	} {
		ctor := ctor
		r.Register(ctor(nil).Type(), func(s score.Scorer) cryptors.Cipher { return ctor(s) })
	}
	for v := 1; v <= 4; v++ {
		v := v
		r.Register(fmt.Sprintf("quagmire%d", v), func(s score.Scorer) cryptors.Cipher { return quagmire.New(v, s) })
	}
	r.Register(playfair.Type, func(s score.Scorer) cryptors.Cipher { return playfair.New(s) })
	r.Register(bifid.Type, func(s score.Scorer) cryptors.Cipher { return bifid.New(s) })
	r.Register(digrafid.Type, func(s score.Scorer) cryptors.Cipher { return digrafid.New(s) })
	r.Register(route.Type, func(s score.Scorer) cryptors.Cipher { return route.New(s) })
	r.Register(swagman.Type, func(s score.Scorer) cryptors.Cipher { return swagman.New(s) })
	r.Register(myszkowski.Type, func(s score.Scorer) cryptors.Cipher { return myszkowski.New(s) })
	r.Register(nicodemus.Type, func(s score.Scorer) cryptors.Cipher { return nicodemus.New(s) })
	r.Register(cadenus.Type, func(s score.Scorer) cryptors.Cipher { return cadenus.New(s) })
	r.Register(amsco.Type, func(s score.Scorer) cryptors.Cipher { return amsco.New(s) })
	r.Register(homophonic.Type, func(s score.Scorer) cryptors.Cipher { return homophonic.New(s) })
	r.Register(pollux.Type, func(s score.Scorer) cryptors.Cipher { return pollux.New(s) })
	r.Register(baconian.Type, func(s score.Scorer) cryptors.Cipher { return baconian.New(s) })
	return r
}
