package app

import (
	"fmt"

	cryptoService "github.com/allisson/cachevault/internal/crypto/service"
)

// SecretStore returns the platform credential store.
func (c *Container) SecretStore() cryptoService.SecretStore {
	c.secretStoreInit.Do(func() {
		c.secretStore = cryptoService.NewKeyringStore()
	})
	return c.secretStore
}

// SetSecretStore replaces the credential store before first use. Embedders and tests
// use it to swap the platform keyring for another SecretStore.
func (c *Container) SetSecretStore(store cryptoService.SecretStore) {
	c.secretStoreInit.Do(func() {
		c.secretStore = store
	})
}

// KeyProvider returns the key provider bound to the configured keyring service.
func (c *Container) KeyProvider() (cryptoService.KeyProvider, error) {
	c.keyProviderInit.Do(func() {
		provider, err := c.initKeyProvider()
		if err != nil {
			c.setInitError("keyProvider", err)
			return
		}
		c.keyProvider = provider
	})
	if err := c.initError("keyProvider"); err != nil {
		return nil, err
	}
	return c.keyProvider, nil
}

// Codec returns the AEAD codec sealing entry and attribute values.
func (c *Container) Codec() (cryptoService.Codec, error) {
	c.codecInit.Do(func() {
		codec, err := c.initCodec()
		if err != nil {
			c.setInitError("codec", err)
			return
		}
		c.codec = codec
	})
	if err := c.initError("codec"); err != nil {
		return nil, err
	}
	return c.codec, nil
}

// Digester returns the peppered digest used for attribute values.
func (c *Container) Digester() (cryptoService.Digester, error) {
	c.digesterInit.Do(func() {
		digester, err := c.initDigester()
		if err != nil {
			c.setInitError("digester", err)
			return
		}
		c.digester = digester
	})
	if err := c.initError("digester"); err != nil {
		return nil, err
	}
	return c.digester, nil
}

// initKeyProvider creates the key provider, instrumented when metrics are enabled.
func (c *Container) initKeyProvider() (cryptoService.KeyProvider, error) {
	identity := c.config.KeyringIdentity()
	var provider cryptoService.KeyProvider = cryptoService.NewSecretKeyProvider(
		c.SecretStore(),
		identity.Service,
		c.Logger(),
	)

	if !c.config.MetricsEnabled {
		return provider, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for key provider: %w", err)
	}
	return cryptoService.NewKeyProviderWithMetrics(provider, businessMetrics), nil
}

// initCodec creates the AEAD codec for the configured algorithm.
func (c *Container) initCodec() (cryptoService.Codec, error) {
	alg, err := cryptoService.ParseAlgorithm(c.config.CipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cipher algorithm: %w", err)
	}

	provider, err := c.KeyProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key provider for codec: %w", err)
	}

	identity := c.config.KeyringIdentity()
	return cryptoService.NewAEADCodec(
		provider,
		cryptoService.NewAEADManager(),
		alg,
		identity.EncryptionKeyPurpose,
	), nil
}

// initDigester creates the peppered digest.
func (c *Container) initDigester() (cryptoService.Digester, error) {
	provider, err := c.KeyProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key provider for digester: %w", err)
	}

	identity := c.config.KeyringIdentity()
	return cryptoService.NewPepperedDigester(provider, identity.PepperPurpose), nil
}
