package store_test

import (
	"testing"

	"confide/internal/domain"
	"confide/internal/store"
)

func TestKeyPair_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	pass := "pass"

	var ks domain.KeyStore = store.NewKeyFileStore(home)

	pair := domain.KeyPair{
		Public:  domain.PublicKey{1},
		Private: domain.PrivateKey{2},
	}

	if err := ks.SaveKeyPair(pass, pair); err != nil {
		t.Fatalf("save key pair: %v", err)
	}

	got, err := ks.LoadKeyPair(pass)
	if err != nil {
		t.Fatalf("load key pair: %v", err)
	}
	if got != pair {
		t.Fatal("mismatch after load")
	}
}

func TestKeyPair_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	var ks domain.KeyStore = store.NewKeyFileStore(home)

	pair := domain.KeyPair{Public: domain.PublicKey{1}, Private: domain.PrivateKey{2}}

	if err := ks.SaveKeyPair("correct", pair); err != nil {
		t.Fatalf("save key pair: %v", err)
	}
	if _, err := ks.LoadKeyPair("wrong"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestKeyPair_MissingFile(t *testing.T) {
	var ks domain.KeyStore = store.NewKeyFileStore(t.TempDir())

	if _, err := ks.LoadKeyPair("pass"); err != store.ErrNoKeyPair {
		t.Fatalf("want ErrNoKeyPair, got %v", err)
	}
}

func TestDirectory_SaveLoadDelete(t *testing.T) {
	var ds domain.DirectoryStore = store.NewDirectoryFileStore(t.TempDir())

	profile := domain.AccountProfile{
		UserID:      "bob",
		DisplayName: "Bob",
		PublicKey:   domain.PublicKey{7},
	}
	if err := ds.SaveProfile(profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	got, ok, err := ds.LoadProfile("bob")
	if err != nil || !ok {
		t.Fatalf("load profile: ok=%v err=%v", ok, err)
	}
	if got != profile {
		t.Fatal("profile mismatch after load")
	}

	if err := ds.DeleteProfile("bob"); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if _, ok, _ := ds.LoadProfile("bob"); ok {
		t.Fatal("profile still present after delete")
	}
}

func TestMessages_AppendLoadReplace(t *testing.T) {
	var ms domain.MessageStore = store.NewMessageFileStore(t.TempDir())

	first := domain.Message{ID: "1", From: "alice", To: "bob", Body: "hi", Timestamp: 1}
	second := domain.Message{ID: "2", From: "bob", To: "alice", Body: "hey", Timestamp: 2}

	if err := ms.AppendMessage("bob", first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := ms.AppendMessage("bob", second); err != nil {
		t.Fatalf("append: %v", err)
	}

	msgs, err := ms.LoadMessages("bob")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "1" || msgs[1].ID != "2" {
		t.Fatalf("unexpected history: %+v", msgs)
	}

	placeholder := domain.Message{ID: "3", From: "bob", Body: "message could not be decrypted", Unreadable: true}
	if err := ms.ReplaceMessages("bob", []domain.Message{placeholder}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	msgs, err = ms.LoadMessages("bob")
	if err != nil {
		t.Fatalf("load after replace: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].Unreadable {
		t.Fatalf("unexpected history after replace: %+v", msgs)
	}
}
