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
package engine

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// Configuration errors.  They are never returned while enciphering.
var (
	ErrUnknownReflector        = errors.New("unknown reflector")
	ErrUnknownRotor            = errors.New("unknown rotor")
	ErrInvalidRingSetting      = errors.New("invalid ring setting")
	ErrInvalidIndicatorSetting = errors.New("invalid indicator setting")
	ErrInvalidPlugboardPair    = errors.New("invalid plugboard pair")
)

// SettingError reports the offending value of a machine setting.  It
// unwraps to one of the Err* values above.
type SettingError struct {
	Err    error
	Value  string
	Reason string
}

func (e *SettingError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v %q", e.Err, e.Value)
	}
	return fmt.Sprintf("%v %q: %s", e.Err, e.Value, e.Reason)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the sentinel.
func (e *SettingError) Cause() error {
	return e.Err
}

func settingError(err error, value, reason string, args ...interface{}) *SettingError {
	return &SettingError{Err: err, Value: value, Reason: fmt.Sprintf(reason, args...)}
}
