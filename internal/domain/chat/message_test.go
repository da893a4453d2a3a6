package chat

import "testing"

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"valid user", Message{UserID: "u1", Role: User, Content: "hi"}, false},
		{"valid assistant", Message{UserID: "u1", Role: Assistant, Content: "hello"}, false},
		{"missing user", Message{Role: User, Content: "hi"}, true},
		{"bad role", Message{UserID: "u1", Role: "system", Content: "hi"}, true},
		{"empty content", Message{UserID: "u1", Role: User}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
