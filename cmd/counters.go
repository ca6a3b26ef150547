/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

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
package cmd

import (
	"math/big"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const countersKey = "counters"

// counterStore keeps the letter count reached by each machine setting, keyed
// by engine.Machine.CounterKey.  It has its own file so that saving a count
// never writes the machine settings out with it.
type counterStore struct {
	v        *viper.Viper
	fileName string
}

func openCounterStore(fileName string) (*counterStore, error) {
	v := viper.New()
	v.SetFs(appFs)
	v.SetConfigFile(fileName)
	v.SetConfigType("yaml")
	if exists, _ := existsFile(fileName); exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading the counter file %s", fileName)
		}
		notepad.DEBUG.Println("Using counter file:", fileName)
	}
	return &counterStore{v: v, fileName: fileName}, nil
}

func existsFile(fileName string) (bool, error) {
	_, err := appFs.Stat(fileName)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the saved count for key.
func (s *counterStore) Get(key string) (*big.Int, bool) {
	str, err := cast.ToStringE(s.v.Get(countersKey + "." + key))
	if err != nil || len(str) == 0 {
		return nil, false
	}
	iCnt, ok := new(big.Int).SetString(str, 10)
	if !ok || iCnt.Sign() < 0 {
		notepad.WARN.Printf("Ignoring the bad saved count [%s] for %s\n", str, key)
		return nil, false
	}
	return iCnt, true
}

func (s *counterStore) Set(key string, iCnt *big.Int) {
	s.v.Set(countersKey+"."+key, iCnt.Text(10))
}

func (s *counterStore) Save() error {
	return errors.Wrapf(s.v.WriteConfigAs(s.fileName), "writing the counter file %s", s.fileName)
}
