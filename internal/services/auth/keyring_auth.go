package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetPassword(account string, password string) error {
	return keyring.Set(k.serviceName, NormalizeAccount(account), password)
}

func (k *KeyringStore) GetPassword(account string) (string, error) {
	password, err := keyring.Get(k.serviceName, NormalizeAccount(account))
	if err == nil {
		return password, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrPasswordNotFound
	}
	return "", err
}

func (k *KeyringStore) DeletePassword(account string) error {
	err := keyring.Delete(k.serviceName, NormalizeAccount(account))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrPasswordNotFound
	}
	return err
}
