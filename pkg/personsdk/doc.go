/*
Package personsdk is a client for the persons registry API.

# Client and Session

A Client covers the public endpoints and creates Sessions:

	client := personsdk.NewClient("http://localhost:8080")
	session, err := client.Login(ctx, "ioan@example.com", "password123")

A Session carries the bearer token and the user it belongs to:

	persons, err := session.ListPersons(ctx)

	p, err := session.CreatePerson(ctx, personsdk.PersonInput{
		FirstName: personsdk.String("Ioan"),
		...
	})

Updates only send the fields that are set. IDPhoto is a Nullable so a photo
can be cleared:

	_, err = session.UpdatePerson(ctx, p.ID, personsdk.PersonInput{
		IDPhoto: personsdk.Null[string](),
	})

# Persistence

Sessions are stored explicitly; nothing is cached behind the caller's back:

	err = session.Save(path)
	session, err = personsdk.LoadSession(path, nil)
	err = personsdk.ClearSession(path)

# Errors

Any non-2xx response is returned as *APIError whose Message is meant to be
shown to the user.
*/
package personsdk
