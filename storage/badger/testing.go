// Copyright 2026 Acroforms Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import "github.com/acroforms/formrank/storage"

// NewMemoryStores creates in-memory corpus, vocabulary and history
// repositories for testing. Caller must close the repos and backend when
// done.
func NewMemoryStores() (storage.CorpusRepository, storage.VocabularyRepository, storage.HistoryRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	corpus, err := NewCorpusRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	vocab, err := NewVocabularyRepository(backend)
	if err != nil {
		corpus.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	history, err := NewHistoryRepository(backend)
	if err != nil {
		vocab.Close()
		corpus.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return corpus, vocab, history, backend, nil
}
