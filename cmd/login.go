package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in against the mock user directory",
	Long: `Check a username and password against the built-in demo users.

Missing values are prompted for. The mock answers after login_delay_ms.
Nothing is stored; the command only reports whether the credentials match.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	creds := domain.LoginCredentials{Username: loginUsername, Password: loginPassword}
	if creds.Username == "" || creds.Password == "" {
		result, err := tea.NewProgram(newLoginModel(creds), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("error running login prompt: %w", err)
		}
		m, ok := result.(loginModel)
		if !ok || !m.done {
			fmt.Println(ui.FormatMuted("Login cancelled."))
			return nil
		}
		creds = m.credentials()
	}

	fmt.Println(ui.FormatMuted(ui.IconLock + " Signing in as " + creds.Username + "..."))

	resp, err := loginService.Login(ctx, creds)
	if err != nil {
		return err
	}

	if !resp.Success {
		fmt.Println(ui.FormatError(resp.Message))
		return fmt.Errorf("login failed")
	}
	fmt.Println(ui.FormatSuccess(resp.Message))
	return nil
}

// --- TUI Model ---

type loginModel struct {
	inputs []textinput.Model
	focus  int
	done   bool
}

func newLoginModel(creds domain.LoginCredentials) loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username: "
	user.CharLimit = 64
	user.SetValue(creds.Username)

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.SetValue(creds.Password)

	m := loginModel{inputs: []textinput.Model{user, pass}}
	if creds.Username != "" {
		m.focus = 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) credentials() domain.LoginCredentials {
	return domain.LoginCredentials{
		Username: strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m loginModel) View() string {
	return "\n" +
		ui.FormatTitle(" "+ui.IconLock+" Login ") + "\n\n" +
		"  " + m.inputs[0].View() + "\n" +
		"  " + m.inputs[1].View() + "\n\n" +
		ui.FormatMuted(" [Tab] Switch  [Enter] Submit  [Esc] Cancel") + "\n"
}
