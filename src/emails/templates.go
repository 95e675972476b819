package emails

import "fmt"

// WelcomeEmail builds the body sent right after registration.
func WelcomeEmail(name, profileURL string) (subject, body string) {
	subject = "Welcome to UniLink"
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #0077b5;">Welcome to UniLink, %s!</h1>
  <p>Your account is ready. Complete your profile so classmates and faculty can find you.</p>
  <p><a href="%s" style="color: #0077b5;">View your profile</a></p>
</div>`, name, profileURL)
	return subject, body
}

// ConnectionAcceptedEmail builds the body sent to the request sender once the
// recipient accepts.
func ConnectionAcceptedEmail(senderName, recipientName, profileURL string) (subject, body string) {
	subject = fmt.Sprintf("%s accepted your connection request", recipientName)
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #0077b5;">Good news, %s!</h1>
  <p><strong>%s</strong> accepted your connection request on UniLink.</p>
  <p><a href="%s" style="color: #0077b5;">Visit their profile</a></p>
</div>`, senderName, recipientName, profileURL)
	return subject, body
}

// CommentNotificationEmail builds the body sent to a post author when
// somebody comments on their post.
func CommentNotificationEmail(recipientName, commenterName, postURL, comment string) (subject, body string) {
	subject = "New comment on your post"
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #0077b5;">Hi %s,</h1>
  <p><strong>%s</strong> commented on your post:</p>
  <blockquote style="border-left: 3px solid #0077b5; padding-left: 10px;">%s</blockquote>
  <p><a href="%s" style="color: #0077b5;">View the post</a></p>
</div>`, recipientName, commenterName, comment, postURL)
	return subject, body
}
